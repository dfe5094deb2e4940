package session

import (
	"sort"
	"strings"

	"github.com/cbdog94/dset/pkg/dset/data"
	"github.com/cbdog94/dset/pkg/dset/print"
	"github.com/cbdog94/dset/pkg/dset/types"
)

// OutputMode selects how LIST/SAVE rows are rendered, mirroring enum
// dset_output_mode.
type OutputMode int

const (
	ModeNone OutputMode = iota
	ModePlain
	ModeSave
	ModeXML
)

// SetOutputMode overrides the output mode the command driver would
// otherwise default (PLAIN for LIST, SAVE for SAVE).
func (s *Session) SetOutputMode(m OutputMode) { s.mode = m }

// output accumulates the rows of the set currently being listed so sorted
// mode can emit them in stable order at finalization, mirroring the
// original's per-session sorted/pool lists (SPEC_FULL.md §4.4 "Output
// sorting").
type output struct {
	setname string
	desc    *types.Descriptor
	rows    []string
	open    bool
}

func newOutput() *output { return &output{} }

// startSet begins a new set's header block / create line / root element,
// flushing whatever set was previously open first.
func (s *Session) startSet(desc *types.Descriptor, setname string, header *data.Blob) error {
	if s.out.open {
		s.finalizeSet(false)
	}
	s.out.setname = setname
	s.out.desc = desc
	s.out.rows = s.out.rows[:0]
	s.out.open = true

	buf := print.NewBuffer(4096)
	switch s.mode {
	case ModePlain:
		buf.Printf("Name: %s\n", setname)
		buf.Printf("Type: %s\n", desc.Name)
		buf.Printf("Revision: %d\n", desc.Revision)
		writeHeaderFields(buf, header)
		if !s.envopts.Test(EnvListHeader) {
			buf.Printf("Members:\n")
		}
	case ModeSave:
		buf.Printf("create %s %s", setname, desc.Name)
		writeCreateOpts(buf, header)
		buf.Printf("\n")
	case ModeXML:
		buf.Printf("<dset name=\"%s\">\n<type>%s</type>\n<revision>%d</revision>\n", setname, desc.Name, desc.Revision)
	}
	s.outfn(buf.String())
	return nil
}

// appendRow records one decoded ADT member against the currently open set.
func (s *output) appendRow(desc *types.Descriptor, line string, sorted bool) {
	_ = desc
	s.rows = append(s.rows, line)
}

// finalizeSet flushes the accumulated rows (sorting them first if the
// type is hash:* and EnvSorted is set), then closes the set's output
// block. done marks whether this is the terminal DONE-triggered flush;
// the output is the same either way.
func (s *Session) finalizeSet(done bool) {
	if !s.out.open {
		return
	}
	if s.envopts.Test(EnvSorted) && strings.HasPrefix(s.out.desc.Name, "hash:") {
		sort.Strings(s.out.rows)
	}
	if !s.envopts.Test(EnvListHeader) {
		var b strings.Builder
		for _, r := range s.out.rows {
			b.WriteString(r)
		}
		if s.mode == ModeXML {
			b.WriteString("")
		}
		s.outfn(b.String())
	}
	if s.mode == ModeXML {
		s.outfn("</dset>\n")
	}
	s.out.open = false
	s.printedSet = true
	_ = done
}

// finalizeDump closes the XML root element once every set has been
// listed, called when the transport's read loop sees DONE.
func (s *Session) finalizeDump() {
	s.finalizeSet(true)
	if s.mode == ModeXML {
		s.outfn("</dsets>\n")
	}
}

func writeHeaderFields(buf *print.Buffer, header *data.Blob) {
	if v, ok := header.GetU32(data.OptMemsize); ok {
		buf.Printf("Size in memory: %d\n", v)
	}
	if v, ok := header.GetU32(data.OptReferences); ok {
		buf.Printf("References: %d\n", v)
	}
	if v, ok := header.GetU32(data.OptElements); ok {
		buf.Printf("Number of entries: %d\n", v)
	}
}

func writeCreateOpts(buf *print.Buffer, header *data.Blob) {
	if v, ok := header.GetU32(data.OptHashsize); ok {
		buf.Printf(" hashsize %d", v)
	}
	if v, ok := header.GetU32(data.OptMaxelem); ok {
		buf.Printf(" maxelem %d", v)
	}
	if v, ok := header.GetU32(data.OptTimeout); ok {
		buf.Printf(" timeout %d", v)
	}
	if header.Test(data.OptCounters) {
		buf.Printf(" counters")
	}
	if header.Test(data.OptForceadd) {
		buf.Printf(" forceadd")
	}
	if v, ok := header.GetString(data.OptCreateComment); ok && v != "" {
		buf.Printf(" comment %q", v)
	}
}

// renderRow formats one decoded ADT member into buf, in the session's
// current output mode.
func renderRow(buf *print.Buffer, mode OutputMode, desc *types.Descriptor, row *data.Blob) error {
	switch mode {
	case ModeSave, ModePlain:
		if err := print.Elem(buf, row); err != nil {
			return err
		}
		writeADTOpts(buf, row)
		return buf.Printf("\n")
	case ModeXML:
		if err := buf.Printf("<member><elem>"); err != nil {
			return err
		}
		if err := print.Elem(buf, row); err != nil {
			return err
		}
		return buf.Printf("</elem></member>\n")
	default:
		if err := print.Elem(buf, row); err != nil {
			return err
		}
		return buf.Printf("\n")
	}
}

func writeADTOpts(buf *print.Buffer, row *data.Blob) {
	if v, ok := row.GetU32(data.OptTimeout); ok {
		buf.Printf(" timeout %d", v)
	}
	if row.Test(data.OptSkbmark) {
		buf.Printf(" skbmark ")
		print.Skbmark(buf, row)
	}
	if row.Test(data.OptSkbprio) {
		buf.Printf(" skbprio ")
		print.Skbprio(buf, row)
	}
	if v, ok := row.GetString(data.OptAdtComment); ok && v != "" {
		buf.Printf(" comment %q", v)
	}
	if v, ok := row.GetU64(data.OptBytes); ok {
		buf.Printf(" bytes %d", v)
	}
	if v, ok := row.GetU64(data.OptPackets); ok {
		buf.Printf(" packets %d", v)
	}
}
