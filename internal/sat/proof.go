package sat

import (
	"bufio"
	"fmt"
	"io"
)

// dratWriter emits a binary-free (textual) DRAT proof: one line per learnt
// clause with its literals in DIMACS convention terminated by 0, and a "d "
// prefixed line for every deletion. It buffers writes and must be closed by
// the caller once solving finishes.
type dratWriter struct {
	w   *bufio.Writer
	buf []byte
}

// NewDratWriter returns a ProofEmitter that appends a DRAT proof to w. The
// caller is responsible for flushing, e.g. by calling Close once the Solver
// this was passed to via Options.Proof has finished searching.
func NewDratWriter(w io.Writer) *dratWriter {
	return &dratWriter{w: bufio.NewWriter(w)}
}

func (d *dratWriter) OnLearn(lits []Literal) {
	d.writeLine("", lits)
}

func (d *dratWriter) OnDelete(lits []Literal) {
	d.writeLine("d ", lits)
}

func (d *dratWriter) writeLine(prefix string, lits []Literal) {
	d.buf = d.buf[:0]
	d.buf = append(d.buf, prefix...)
	for _, l := range lits {
		d.buf = appendDimacsLit(d.buf, l)
		d.buf = append(d.buf, ' ')
	}
	d.buf = append(d.buf, '0', '\n')
	d.w.Write(d.buf)
}

func appendDimacsLit(buf []byte, l Literal) []byte {
	if !l.IsPositive() {
		buf = append(buf, '-')
	}
	return fmt.Appendf(buf, "%d", l.VarID()+1)
}

// Close flushes any buffered proof lines to the underlying writer.
func (d *dratWriter) Close() error {
	return d.w.Flush()
}
