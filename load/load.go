// Package load reads flowsheet definition files. A definition file declares
// scenario topologies in YAML and is merged over the built-in catalog, so
// plants can model circuits the named set does not cover:
//
//	scenarios:
//	  X:
//	    extraction: 3
//	    stripping: 2
//	    oa_extraction: 1.1
//	    oa_stripping: 1.5
//	    bypasses:
//	      - to_stage: 2
//	        fraction: 0.3
//	    raffinate_recycle: 0.05
package load

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/miladjahani/Sxoptim/flowsheet"
	"github.com/miladjahani/Sxoptim/types"
)

type fileDef struct {
	Scenarios map[string]flowsheet.Topology `yaml:"scenarios"`
}

// File reads and validates the flowsheet definitions at path.
func File(path string) (map[types.ScenarioID]*flowsheet.Topology, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open flowsheet: %w", err)
	}
	defer f.Close()
	return Reader(f)
}

// Reader reads and validates flowsheet definitions from r.
func Reader(r io.Reader) (map[types.ScenarioID]*flowsheet.Topology, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read flowsheet: %w", err)
	}
	var def fileDef
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("parse flowsheet: %w", err)
	}
	if len(def.Scenarios) == 0 {
		return nil, fmt.Errorf("parse flowsheet: no scenarios declared")
	}
	out := make(map[types.ScenarioID]*flowsheet.Topology, len(def.Scenarios))
	for id, t := range def.Scenarios {
		topo, err := flowsheet.New(t)
		if err != nil {
			return nil, fmt.Errorf("scenario %q: %w", id, err)
		}
		out[types.ScenarioID(id)] = topo
	}
	return out, nil
}

// Merge clones the catalog and overlays the given definitions.
func Merge(c *flowsheet.Catalog, defs map[types.ScenarioID]*flowsheet.Topology) *flowsheet.Catalog {
	cp := c.Clone()
	for id, t := range defs {
		cp.Put(id, t)
	}
	return cp
}
