package kubectl

import "time"

// Pod phases as reported by the API. The zero value of a phase fresh from
// the cluster is never empty; "Unknown" stands in when the node cannot be
// reached.
const (
	StatusRunning   = "Running"
	StatusPending   = "Pending"
	StatusFailed    = "Failed"
	StatusSucceeded = "Succeeded"
	StatusUnknown   = "Unknown"
)

// PodRecord is one pod from a point-in-time inventory snapshot. Records are
// immutable once constructed and never reused across invocations.
type PodRecord struct {
	CreatedAt time.Time
	Name      string
	Namespace string
	Status    string
	Restarts  int
}

// decode targets for `kubectl get pods -o json`. Only the fields the CLI
// consumes are mapped.
type podList struct {
	Items []podItem `json:"items"`
}

type podItem struct {
	Metadata podMetadata `json:"metadata"`
	Status   podStatus   `json:"status"`
}

type podMetadata struct {
	CreationTimestamp time.Time `json:"creationTimestamp"`
	Name              string    `json:"name"`
	Namespace         string    `json:"namespace"`
}

type podStatus struct {
	Phase             string            `json:"phase"`
	ContainerStatuses []containerStatus `json:"containerStatuses"`
}

type containerStatus struct {
	RestartCount int `json:"restartCount"`
}

func (p podItem) record() PodRecord {
	r := PodRecord{
		Name:      p.Metadata.Name,
		Namespace: p.Metadata.Namespace,
		Status:    p.Status.Phase,
		CreatedAt: p.Metadata.CreationTimestamp,
	}

	if r.Status == "" {
		r.Status = StatusUnknown
	}

	for _, cs := range p.Status.ContainerStatuses {
		r.Restarts += cs.RestartCount
	}

	return r
}
