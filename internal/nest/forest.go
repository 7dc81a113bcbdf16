// 包 nest：按大圆距离把陨石坑组织为包含森林，并累计每个容器的命中次数
package nest

import (
	"crater-nest/internal/geo"
)

// Record：一行输入对应的陨石坑，读入后不再修改
type Record struct {
	ID     string
	Lat    float64
	Lon    float64
	Radius float64
}

// NewRecord：由直径构造记录，半径取直径的一半
func NewRecord(id string, lat, lon, diameter float64) Record {
	return Record{ID: id, Lat: lat, Lon: lon, Radius: diameter / 2}
}

// Node：森林节点；子节点归父节点独占，不保留回指
type Node struct {
	ID       string
	Lat      float64
	Lon      float64
	Radius   float64
	Children []*Node
}

func newNode(r Record) *Node {
	return &Node{ID: r.ID, Lat: r.Lat, Lon: r.Lon, Radius: r.Radius}
}

// Counts：容器 ID → 顶层包含判定成功的累计次数；只增不减，从未作为容器的 ID 不出现
type Counts map[string]int

// Builder：在指定天体上构建包含森林
type Builder struct {
	Body geo.Body
}

// BuildForest：月面上的包含森林与计数
func BuildForest(records []Record) ([]*Node, Counts) {
	return Builder{Body: geo.Moon}.Build(records)
}

// 文档注释：构建包含森林
// 约束：records 为去掉表头后的有序序列；按顺序每个未被消费的记录成为新根，
// 其后所有未消费记录依次尝试嵌入该根，成功即从候选池移除，之后既不再成为根也不再参与匹配。
// 复杂度 O(n²)，不使用空间索引。
func (b Builder) Build(records []Record) ([]*Node, Counts) {
	counts := Counts{}
	forest := make([]*Node, 0)
	consumed := make([]bool, len(records))
	for parent := range records {
		if consumed[parent] {
			continue
		}
		root := newNode(records[parent])
		forest = append(forest, root)
		for child := parent + 1; child < len(records); child++ {
			if consumed[child] {
				continue
			}
			if b.tryNest(records[child], root, counts) {
				consumed[child] = true
			}
		}
	}
	return forest, counts
}

// tryNest：candidate 落在 node 圆盘内时一定在其子树中找到或创建位置并返回 true
// 约束：计数只随 node 自身的判定成功递增，与最终挂载深度无关
func (b Builder) tryNest(candidate Record, node *Node, counts Counts) bool {
	if !b.Body.Contains(candidate.Lat, candidate.Lon, node.Lat, node.Lon, node.Radius) {
		return false
	}
	counts[node.ID]++
	if len(node.Children) == 0 {
		node.Children = append(node.Children, newNode(candidate))
		return true
	}
	for _, c := range node.Children {
		if b.tryNest(candidate, c, counts) {
			return true
		}
	}
	node.Children = append(node.Children, newNode(candidate))
	return true
}
