package cmd

import (
	"os"

	"github.com/shirou/gopsutil/process"
	"github.com/sirupsen/logrus"
)

// resourceUsage is a snapshot of this process's footprint.
type resourceUsage struct {
	CPUPercent float64
	MemorySize uint64 // resident set size, bytes
}

func currentResourceUsage() (resourceUsage, error) {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return resourceUsage{}, err
	}
	cpuPercent, err := p.CPUPercent()
	if err != nil {
		return resourceUsage{}, err
	}
	mem, err := p.MemoryInfo()
	if err != nil {
		return resourceUsage{}, err
	}
	return resourceUsage{CPUPercent: cpuPercent, MemorySize: mem.RSS}, nil
}

// logResourceUsage reports the process footprint at info level. Failure to
// read it is not an error for the run.
func logResourceUsage(runID string) {
	usage, err := currentResourceUsage()
	if err != nil {
		logrus.Debugf("resource usage unavailable: %v", err)
		return
	}
	logrus.WithField("run", runID).Infof("Resource usage: cpu %.1f%%, rss %.1f MiB",
		usage.CPUPercent, float64(usage.MemorySize)/(1<<20))
}
