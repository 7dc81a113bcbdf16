// 包 geo：天体表面的大圆距离与圆盘包含判定
package geo

import (
	"math"
	"strings"
)

// MoonRadiusKm：月球平均半径（千米）
const MoonRadiusKm = 1737.4

// Body：以平均半径近似为球体的天体
type Body struct {
	Name     string
	RadiusKm float64
}

var (
	Moon    = Body{Name: "moon", RadiusKm: MoonRadiusKm}
	Mars    = Body{Name: "mars", RadiusKm: 3389.5}
	Mercury = Body{Name: "mercury", RadiusKm: 2439.7}
)

// BodyByName：按名称（不区分大小写）返回预置天体
func BodyByName(name string) (Body, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "moon":
		return Moon, true
	case "mars":
		return Mars, true
	case "mercury":
		return Mercury, true
	}
	return Body{}, false
}

// 文档注释：球面距离（Haversine），返回千米
// 约束：输入为十进制度；假定数值有限，不做校验
func (b Body) Distance(latA, lonA, latB, lonB float64) float64 {
	latA *= math.Pi / 180
	lonA *= math.Pi / 180
	latB *= math.Pi / 180
	lonB *= math.Pi / 180
	dLat := latB - latA
	dLon := lonB - lonA
	sLat := math.Sin(dLat / 2)
	sLon := math.Sin(dLon / 2)
	a := sLat*sLat + math.Cos(latA)*math.Cos(latB)*sLon*sLon
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return b.RadiusKm * c
}

// 文档注释：A 的中心是否落在以 B 为圆心、radiusB 为半径的圆盘内
// 约束：严格小于；恰在边界上不算包含
func (b Body) Contains(latA, lonA, latB, lonB, radiusB float64) bool {
	return b.Distance(latA, lonA, latB, lonB) < radiusB
}

// Distance：月面大圆距离（千米）
func Distance(latA, lonA, latB, lonB float64) float64 {
	return Moon.Distance(latA, lonA, latB, lonB)
}

// Contains：月面圆盘包含判定
func Contains(latA, lonA, latB, lonB, radiusB float64) bool {
	return Moon.Contains(latA, lonA, latB, lonB, radiusB)
}
