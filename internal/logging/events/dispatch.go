package events

import "github.com/andornaut/filectrl/internal/logging"

type DispatchTracer struct{}

type TaskTracer struct{}

type FSTracer struct{}

var (
	Dispatch = DispatchTracer{}
	Task     = TaskTracer{}
	FS       = FSTracer{}
)

func (DispatchTracer) Batch(size int) {
	logging.Trace("dispatch.batch", map[string]interface{}{"size": size})
}

func (DispatchTracer) Pass(pass int, commands []string) {
	logging.Trace("dispatch.pass", map[string]interface{}{"pass": pass, "commands": commands})
}

func (DispatchTracer) Unhandled(commands []string) {
	logging.Trace("dispatch.unhandled", map[string]interface{}{"commands": commands})
}

func (DispatchTracer) Quit(pass int) {
	logging.Trace("dispatch.quit", map[string]interface{}{"pass": pass})
}

func (TaskTracer) Start(id uint64, op, source, dest string, total uint64) {
	logging.Trace("task.start", map[string]interface{}{
		"id":     id,
		"op":     op,
		"source": source,
		"dest":   dest,
		"total":  total,
	})
}

func (TaskTracer) Progress(id, completed, total uint64) {
	logging.Trace("task.progress", map[string]interface{}{"id": id, "completed": completed, "total": total})
}

func (TaskTracer) Done(id uint64) {
	logging.Trace("task.done", map[string]interface{}{"id": id})
}

func (TaskTracer) Error(id uint64, message string) {
	logging.Trace("task.error", map[string]interface{}{"id": id, "error": message})
}

func (FSTracer) ChangeDir(path string, entries int) {
	logging.Trace("fs.chdir", map[string]interface{}{"path": path, "entries": entries})
}

func (FSTracer) Rename(from, to string) {
	logging.Trace("fs.rename", map[string]interface{}{"from": from, "to": to})
}

func (FSTracer) Open(path, opener string) {
	logging.Trace("fs.open", map[string]interface{}{"path": path, "opener": opener})
}

func (FSTracer) Watch(path string) {
	logging.Trace("fs.watch", map[string]interface{}{"path": path})
}

func (FSTracer) WatchError(err error) {
	if err == nil {
		return
	}
	logging.Trace("fs.watch-error", map[string]interface{}{"error": err.Error()})
}
