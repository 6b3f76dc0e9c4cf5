package cli

import (
	"sort"

	"github.com/sahilm/fuzzy"
	"github.com/spf13/cobra"

	"github.com/kdbg-dev/kdbg/pkg/kubectl"
)

// podCompletion completes the pod fragment argument with live pod names from
// the cluster, ranked by fuzzy match against the partial input.
func podCompletion(namespace *string) func(*cobra.Command, []string, string) ([]cobra.Completion, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]cobra.Completion, cobra.ShellCompDirective) {
		// Only the first argument is a pod fragment.
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}

		return tryGetPodNames(cmd, *namespace, toComplete), cobra.ShellCompDirectiveNoFileComp
	}
}

// Try to list pods for candidate names. Completion is best-effort, so any
// failure to reach the cluster yields no candidates.
func tryGetPodNames(cmd *cobra.Command, namespace, toComplete string) []cobra.Completion {
	client, err := kubectl.NewClient()
	if err != nil {
		return nil
	}

	pods, err := client.Pods(cmd.Context(), namespace)
	if err != nil {
		return nil
	}

	completions := make([]cobra.Completion, 0, len(pods))

	if toComplete == "" {
		for _, p := range pods {
			completions = append(completions, cobra.CompletionWithDesc(p.Name, p.Namespace))
		}

		return completions
	}

	targets := make([]string, 0, len(pods))
	for _, p := range pods {
		targets = append(targets, p.Name)
	}

	ranks := fuzzy.Find(toComplete, targets)
	sort.Stable(ranks)

	for _, r := range ranks {
		p := pods[r.Index]
		completions = append(completions, cobra.CompletionWithDesc(p.Name, p.Namespace))
	}

	return completions
}
