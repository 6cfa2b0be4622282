//go:build linux

package proc

// maxTreeSize bounds the descendant walk for fork-heavy workloads.
const maxTreeSize = 4096

// Descendants returns pid followed by every live descendant, breadth first.
func Descendants(pid int) []int {
	out := []int{pid}
	seen := map[int]struct{}{pid: {}}
	for i := 0; i < len(out) && len(out) < maxTreeSize; i++ {
		children, err := ReadProcChildren(out[i])
		if err != nil {
			continue
		}
		for _, c := range children {
			if _, ok := seen[c]; ok {
				continue
			}
			seen[c] = struct{}{}
			out = append(out, c)
		}
	}
	return out
}

func treeUsage(root int) (cpu float64, rss uint64, err error) {
	if !Exists(root) {
		return 0, 0, ErrNoStat
	}
	var alive int
	for _, pid := range Descendants(root) {
		// a descendant can exit mid-walk; skip it
		s, err := CPUSeconds(pid)
		if err != nil {
			continue
		}
		alive++
		cpu += s
		if r, err := ReadProcRSS(pid); err == nil {
			rss += r
		}
	}
	if alive == 0 {
		return 0, 0, ErrNoStat
	}
	return cpu, rss, nil
}
