package kubectl

import (
	"fmt"
	"strconv"
	"time"

	shellwords "github.com/mattn/go-shellwords"
)

// Invocation is a fully shaped kubectl argument vector, ready for the
// executor. Capture selects buffered execution; otherwise the caller's
// terminal is attached for the duration of the run.
type Invocation struct {
	Args    []string
	Capture bool
}

// Build maps a request and its resolved target to the exact kubectl
// argument vector. All option validation happens here, before any
// subprocess is spawned; violations are reported as [*BuildError].
//
// Debug is the one operation with no single downstream invocation; its
// four-step composite is owned by the debugpod package, which shapes each
// step with [DebugCreateArgs], [DebugWaitArgs], [DeletePodArgs], and a
// shell built here.
func Build(req Request, target PodRecord) (*Invocation, error) {
	if req.Targeted() && target.Name == "" {
		return nil, &BuildError{Option: "target", Reason: "no resolved pod name"}
	}

	switch req.Op {
	case OpList:
		return &Invocation{Args: PodsArgs(req.Namespace), Capture: true}, nil

	case OpLogs:
		if req.Options.Tail < 0 {
			return nil, &BuildError{Option: "tail", Reason: "must be zero or positive"}
		}

		args := []string{"logs", target.Name, "-n", target.Namespace, "--tail", strconv.Itoa(req.Options.Tail)}
		if req.Options.Follow {
			args = append(args, "-f")
		}

		return &Invocation{Args: args}, nil

	case OpExec:
		argv, err := shellwords.Parse(req.Options.Command)
		if err != nil {
			return nil, &BuildError{Option: "command", Reason: err.Error()}
		}

		if len(argv) == 0 {
			return nil, &BuildError{Option: "command", Reason: "must not be empty"}
		}

		args := []string{"exec", "-it", target.Name, "-n", target.Namespace, "--"}
		args = append(args, argv...)

		return &Invocation{Args: args}, nil

	case OpShell:
		if req.Options.Shell == "" {
			return nil, &BuildError{Option: "shell", Reason: "must not be empty"}
		}

		return &Invocation{
			Args: []string{"exec", "-it", target.Name, "-n", target.Namespace, "--", req.Options.Shell},
		}, nil

	case OpDescribe:
		return &Invocation{
			Args: []string{"describe", "pod", target.Name, "-n", target.Namespace},
		}, nil

	case OpTop:
		args := append([]string{"top", "pods"}, namespaceArgs(req.Namespace)...)

		return &Invocation{Args: args}, nil

	case OpForward:
		if err := validatePort("local port", req.Options.LocalPort); err != nil {
			return nil, err
		}

		if err := validatePort("pod port", req.Options.RemotePort); err != nil {
			return nil, err
		}

		return &Invocation{
			Args: []string{
				"port-forward", target.Name,
				fmt.Sprintf("%d:%d", req.Options.LocalPort, req.Options.RemotePort),
				"-n", target.Namespace,
			},
		}, nil

	case OpRestart:
		return &Invocation{
			Args: []string{"delete", "pod", target.Name, "-n", target.Namespace},
		}, nil

	case OpEvents:
		return &Invocation{
			Args: []string{
				"get", "events",
				"-n", target.Namespace,
				"--field-selector", "involvedObject.name=" + target.Name,
				"--sort-by", ".lastTimestamp",
			},
		}, nil
	}

	return nil, &BuildError{
		Option: "operation",
		Reason: fmt.Sprintf("%q has no single downstream invocation", req.Op),
	}
}

// PodsArgs shapes the inventory fetch for one namespace, or for all
// namespaces when namespace is empty.
func PodsArgs(namespace string) []string {
	args := append([]string{"get", "pods"}, namespaceArgs(namespace)...)

	return append(args, "-o", "json")
}

// DebugCreateArgs shapes the creation of a transient debug pod. The pod
// runs a plain long sleep so that busybox-class images work unchanged.
func DebugCreateArgs(name, image, namespace string) ([]string, error) {
	if image == "" {
		return nil, &BuildError{Option: "image", Reason: "must not be empty"}
	}

	if namespace == "" {
		return nil, &BuildError{Option: "namespace", Reason: "debug requires a concrete namespace"}
	}

	if name == "" {
		return nil, &BuildError{Option: "name", Reason: "must not be empty"}
	}

	return []string{
		"run", name,
		"--image", image,
		"-n", namespace,
		"--restart=Never",
		"--command", "--", "sleep", "86400",
	}, nil
}

// DebugWaitArgs shapes the readiness wait for a transient debug pod.
func DebugWaitArgs(name, namespace string, timeout time.Duration) []string {
	return []string{
		"wait", "--for=condition=Ready",
		"pod/" + name,
		"-n", namespace,
		"--timeout", timeout.String(),
	}
}

// DeletePodArgs shapes a best-effort pod deletion. Absent pods are not an
// error; teardown after a failed creation must stay quiet.
func DeletePodArgs(name, namespace string) []string {
	return []string{"delete", "pod", name, "-n", namespace, "--ignore-not-found"}
}

// ParsePort converts a positional port argument, reporting violations as
// [*BuildError] so they surface before anything runs.
func ParsePort(option, value string) (int, error) {
	port, err := strconv.Atoi(value)
	if err != nil {
		return 0, &BuildError{Option: option, Reason: fmt.Sprintf("%q is not a number", value)}
	}

	if err := validatePort(option, port); err != nil {
		return 0, err
	}

	return port, nil
}

func validatePort(option string, port int) error {
	if port < 1 || port > 65535 {
		return &BuildError{Option: option, Reason: fmt.Sprintf("%d is outside 1-65535", port)}
	}

	return nil
}

func namespaceArgs(namespace string) []string {
	if namespace == "" {
		return []string{"--all-namespaces"}
	}

	return []string{"-n", namespace}
}
