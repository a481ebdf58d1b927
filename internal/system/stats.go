package system

import (
	"fmt"
	"os"
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

// Stats is a snapshot of the current process and host.
type Stats struct {
	RSS        uint64 // bytes
	CPUPercent float64
	Goroutines int
	CPUs       int
	HostTotal  uint64 // bytes
	HostFree   uint64
	FrameAlloc int64 // frames allocated by the image pool
}

// ProcessStats collects what it can. Fields gopsutil cannot read on this
// platform stay zero.
func ProcessStats() (Stats, error) {
	st := Stats{Goroutines: runtime.NumGoroutine(), FrameAlloc: PoolAllocs()}

	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return st, fmt.Errorf("process stats: %w", err)
	}
	if mi, err := p.MemoryInfo(); err == nil {
		st.RSS = mi.RSS
	}
	if pct, err := p.CPUPercent(); err == nil {
		st.CPUPercent = pct
	}
	if n, err := cpu.Counts(true); err == nil {
		st.CPUs = n
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		st.HostTotal = vm.Total
		st.HostFree = vm.Available
	}
	return st, nil
}

func (s Stats) String() string {
	return fmt.Sprintf("RSS: %.1f MiB | CPU: %.1f%% | Goroutines: %d | Cores: %d | Host free: %.1f/%.1f GiB | Frame buffers: %d",
		float64(s.RSS)/(1<<20), s.CPUPercent, s.Goroutines, s.CPUs,
		float64(s.HostFree)/(1<<30), float64(s.HostTotal)/(1<<30), s.FrameAlloc)
}
