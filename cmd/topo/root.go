package topo

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ValentinKolb/pMap/cmd/util"
	"github.com/ValentinKolb/pMap/lib/pmap"
	"github.com/spf13/cobra"
)

var (
	// TopoCmd represents the topo command
	TopoCmd = &cobra.Command{
		Use:   "topo [file]",
		Short: "Topologically sort a dependency graph",
		Long: `Topologically sort a dependency graph given as an edge list.

Each input line holds either two whitespace-separated node names "a b",
meaning a must come before b, or a single name declaring a node without
dependencies. The sort keeps every node's in-degree in a min-ordered
priority map: ready nodes (in-degree zero) surface at the top, and popping
one decrements its successors in place. With no argument, stdin is read.`,
		Args: cobra.MaximumNArgs(1),
		RunE: run,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			return util.BindCommandFlags(cmd)
		},
	}
)

func init() {
	// Initialize viper
	cobra.OnInitialize(util.InitConfig)
}

func run(_ *cobra.Command, args []string) error {
	var input io.Reader = os.Stdin
	if len(args) == 1 {
		file, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer file.Close()
		input = file
	}

	successors, err := readEdges(input)
	if err != nil {
		return err
	}

	order, err := sort(successors)
	if err != nil {
		return err
	}

	for _, node := range order {
		fmt.Println(node)
	}
	return nil
}

// readEdges parses the edge list into a successor adjacency map. Nodes
// without outgoing edges still get an (empty) entry.
func readEdges(r io.Reader) (map[string][]string, error) {
	successors := make(map[string][]string)

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		switch len(fields) {
		case 0:
			continue
		case 1:
			if _, ok := successors[fields[0]]; !ok {
				successors[fields[0]] = nil
			}
		case 2:
			successors[fields[0]] = append(successors[fields[0]], fields[1])
			if _, ok := successors[fields[1]]; !ok {
				successors[fields[1]] = nil
			}
		default:
			return nil, fmt.Errorf("line %d: expected one or two node names, got %d", lineNo, len(fields))
		}
	}
	return successors, scanner.Err()
}

// sort runs Kahn's algorithm with the in-degrees held in a min-ordered
// priority map of the configured engine
func sort(successors map[string][]string) ([]string, error) {
	factory, err := util.GetMapFactory()
	if err != nil {
		return nil, err
	}
	degrees := factory(pmap.Less[int]())

	for node, succs := range successors {
		degrees.GetOrDefault(node)
		for _, s := range succs {
			degrees.Increment(s)
		}
	}

	order := make([]string, 0, len(successors))
	for !degrees.Empty() {
		node, degree, err := degrees.Pop()
		if err != nil {
			return nil, err
		}
		if degree != 0 {
			// every remaining node waits on another one
			return nil, fmt.Errorf("graph contains a cycle (stuck with %d unresolved nodes)", degrees.Size()+1)
		}
		order = append(order, node)
		for _, s := range successors[node] {
			degrees.Decrement(s)
		}
	}

	return order, nil
}
