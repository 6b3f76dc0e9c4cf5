package kubectl

// Op identifies a logical operation against the cluster.
type Op string

const (
	OpList     Op = "list"
	OpLogs     Op = "logs"
	OpExec     Op = "exec"
	OpShell    Op = "shell"
	OpDebug    Op = "debug"
	OpDescribe Op = "describe"
	OpTop      Op = "top"
	OpForward  Op = "forward"
	OpRestart  Op = "restart"
	OpEvents   Op = "events"
)

// Options carries the operation-specific settings of a [Request]. Only the
// fields relevant to the request's [Op] are consulted.
type Options struct {
	// Command is the command line to run inside the pod (exec).
	Command string
	// Shell is the shell path to spawn inside the pod (shell, debug).
	Shell string
	// Image is the container image for transient debug pods (debug).
	Image string
	// Tail is the number of recent log lines to request (logs).
	Tail int
	// LocalPort and RemotePort form the forwarding pair (forward).
	LocalPort  int
	RemotePort int
	// Follow keeps the log stream attached (logs).
	Follow bool
	// Verbose widens list output with restart and age columns (list).
	Verbose bool
}

// Request describes one operation to perform. It is constructed once per
// invocation and immutable afterwards. Namespace is always explicit; the
// empty string is the all-namespaces sentinel, and nothing in the pipeline
// holds a process-wide namespace default.
type Request struct {
	Op        Op
	Namespace string
	Fragment  string
	Options   Options
}

// Targeted reports whether the operation resolves a pod fragment before it
// can run.
func (r Request) Targeted() bool {
	switch r.Op {
	case OpLogs, OpExec, OpShell, OpDescribe, OpForward, OpRestart, OpEvents:
		return true
	case OpList, OpTop, OpDebug:
		return false
	}

	return false
}
