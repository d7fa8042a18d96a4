package system

import (
	"fmt"
	"log"
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// Snapshot is the host state recorded next to a performance report.
type Snapshot struct {
	LogicalCPUs    int
	MemTotal       uint64
	MemUsedPercent float64
	HeapAlloc      uint64
	Goroutines     int
}

// TakeSnapshot reads CPU and memory figures. Values the host refuses to
// report stay zero.
func TakeSnapshot() Snapshot {
	var s Snapshot

	if n, err := cpu.Counts(true); err == nil {
		s.LogicalCPUs = n
	} else {
		log.Printf("[!] Failed to count CPUs: %v", err)
		s.LogicalCPUs = runtime.NumCPU()
	}

	if vm, err := mem.VirtualMemory(); err == nil {
		s.MemTotal = vm.Total
		s.MemUsedPercent = vm.UsedPercent
	} else {
		log.Printf("[!] Failed to read memory stats: %v", err)
	}

	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	s.HeapAlloc = ms.HeapAlloc
	s.Goroutines = runtime.NumGoroutine()

	return s
}

func (s Snapshot) String() string {
	return fmt.Sprintf("CPUs: %d | Mem: %.1f%% of %s | Heap: %s | Goroutines: %d",
		s.LogicalCPUs, s.MemUsedPercent, FormatBytes(s.MemTotal), FormatBytes(s.HeapAlloc), s.Goroutines)
}

// FormatBytes renders n with a binary unit suffix.
func FormatBytes(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := uint64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
