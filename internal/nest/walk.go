package nest

// Walk：先序遍历森林，depth 从 0（根）开始；fn 返回 false 时停止遍历
func Walk(forest []*Node, fn func(n *Node, depth int) bool) {
	var visit func(n *Node, depth int) bool
	visit = func(n *Node, depth int) bool {
		if !fn(n, depth) {
			return false
		}
		for _, c := range n.Children {
			if !visit(c, depth+1) {
				return false
			}
		}
		return true
	}
	for _, r := range forest {
		if !visit(r, 0) {
			return
		}
	}
}

// Size：森林中的节点总数
func Size(forest []*Node) int {
	n := 0
	Walk(forest, func(*Node, int) bool { n++; return true })
	return n
}

// Stats：一次运行的汇总
type Stats struct {
	Records    int
	Roots      int
	Nested     int
	MaxDepth   int
	Containers int
}

// Summary：统计森林规模与层级
func Summary(forest []*Node, counts Counts) Stats {
	s := Stats{Roots: len(forest), Containers: len(counts)}
	Walk(forest, func(_ *Node, depth int) bool {
		s.Records++
		if depth > s.MaxDepth {
			s.MaxDepth = depth
		}
		return true
	})
	s.Nested = s.Records - s.Roots
	return s
}
