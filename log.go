package willow

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
)

// LogStats writes a human-readable line describing the manager's current
// bookkeeping to w: live object count, the handle high-water mark, and
// sweeps run so far.
func (vm *VM) LogStats(w io.Writer) {
	s := vm.Objects.Stats()
	fmt.Fprintf(w, "willow: %s live objects, %s handles issued, %s sweeps run\n",
		humanize.Comma(int64(s.LiveObjects)),
		humanize.Comma(int64(s.HandleHighWater)),
		humanize.Comma(int64(s.SweepCount)))
}

// LogFault writes a one-line diagnostic for a raised Fault to w, prefixed
// with the VM's session so a host running several VMs can tell which one
// aborted.
func (vm *VM) LogFault(w io.Writer, err error) {
	fmt.Fprintf(w, "willow[%s]: %s\n", vm.SessionID, err)
}
