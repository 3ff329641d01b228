package params_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	params "github.com/0xalexb/hjarta-params"
	"github.com/0xalexb/hjarta-params/config"
)

func ExampleLoader_Load() {
	dir, err := os.MkdirTemp("", "params")
	if err != nil {
		fmt.Println(err)

		return
	}

	defer func() { _ = os.RemoveAll(dir) }()

	path := filepath.Join(dir, "robot.yaml")
	document := "robot:\n  arm:\n    ros__parameters:\n      gains: {p: 1.0}\n      joints: [shoulder, elbow]\n"

	err = os.WriteFile(path, []byte(document), 0o600)
	if err != nil {
		fmt.Println(err)

		return
	}

	loaded, err := params.NewLoader().Load(context.Background(), config.Params{
		Files:     []string{path},
		Overrides: []string{"robot/arm:gains.p:=2.5"},
	})
	if err != nil {
		fmt.Println(err)

		return
	}

	defer loaded.Finalize()

	for i := range loaded.NumNodes() {
		node := loaded.Node(i)

		for j := range node.Len() {
			fmt.Printf("%s %s = %s\n", loaded.NodeName(i), node.Name(j), node.Value(j))
		}
	}
	// Output:
	// robot/arm gains.p = 2.500000
	// robot/arm joints = [shoulder, elbow]
}
