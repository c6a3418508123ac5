package grammar

import (
	"io"

	"gopkg.in/yaml.v3"
)

// dumpInst is the YAML-friendly projection of an Inst; Inst itself is kept
// free of struct tags since it is a hot-path value copied by the engine on
// every frame dispatch.
type dumpInst struct {
	ID                 ID     `yaml:"id"`
	Variant            string `yaml:"variant"`
	ParseMode          string `yaml:"parse_mode"`
	Flags              uint16 `yaml:"flags"`
	FirstChildIdx      uint32 `yaml:"first_child_idx"`
	ChildCount         uint16 `yaml:"child_count"`
	MinTimes           uint16 `yaml:"min_times"`
	FirstTerminatorIdx uint32 `yaml:"first_terminator_idx"`
	TerminatorCount    uint16 `yaml:"terminator_count"`
}

type dumpTables struct {
	Insts       []dumpInst `yaml:"instructions"`
	ChildIDs    []ID       `yaml:"child_ids"`
	Terminators []ID       `yaml:"terminators"`
	Strings     []string   `yaml:"strings"`
	Root        ID         `yaml:"root"`
}

// DumpTables renders a compiled Tables as YAML for debugging and manual
// inspection. This is the core's own ad hoc introspection aid over
// whatever tables it was handed — it does not generate or serialize a
// dialect's on-disk grammar format, which the core spec places out of
// scope (spec §1).
func DumpTables(w io.Writer, t *Tables) error {
	d := dumpTables{
		ChildIDs:    t.ChildIDs,
		Terminators: t.Terminators,
		Strings:     t.Strings,
		Root:        t.Root,
	}
	for i, in := range t.Insts {
		d.Insts = append(d.Insts, dumpInst{
			ID:                 ID(i),
			Variant:            in.Variant.String(),
			ParseMode:          in.ParseMode.String(),
			Flags:              uint16(in.Flags),
			FirstChildIdx:      in.FirstChildIdx,
			ChildCount:         in.ChildCount,
			MinTimes:           in.MinTimes,
			FirstTerminatorIdx: in.FirstTerminatorIdx,
			TerminatorCount:    in.TerminatorCount,
		})
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(d)
}
