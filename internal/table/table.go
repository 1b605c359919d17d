package table

// Table 存活分配表：块起始偏移 -> 发放时的阶。
// Alloc 成功时插入，Free 时取走；key 在存活期间唯一。
type Table struct {
	m map[uint64]uint8
}

// New 创建空表。
func New() *Table {
	return &Table{m: make(map[uint64]uint8)}
}

// Insert 记录偏移 off 以 order 阶发放。调用方保证 off 不在表中。
func (t *Table) Insert(off uint64, order int) {
	t.m[off] = uint8(order)
}

// Get 查询 off 对应的阶，不删除。
func (t *Table) Get(off uint64) (int, bool) {
	o, ok := t.m[off]
	return int(o), ok
}

// Take 取出并删除 off 对应的阶，不存在返回 false。
func (t *Table) Take(off uint64) (int, bool) {
	o, ok := t.m[off]
	if !ok {
		return 0, false
	}
	delete(t.m, off)
	return int(o), true
}

// Contains 判断 off 是否为存活分配。
func (t *Table) Contains(off uint64) bool {
	_, ok := t.m[off]
	return ok
}

// Len 返回存活分配数。
func (t *Table) Len() int { return len(t.m) }

// Range 遍历存活分配，f 返回 false 时提前终止。
func (t *Table) Range(f func(off uint64, order int) bool) {
	for off, o := range t.m {
		if !f(off, int(o)) {
			return
		}
	}
}
