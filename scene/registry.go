package scene

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// MaxNameLen is the longest datablock name in bytes; longer names are cut.
const MaxNameLen = 63

type named interface {
	Name() string
	setName(string)
}

// registry keeps datablocks of one kind with unique names, in creation order.
type registry[T named] struct {
	byName map[string]T
	order  []T
}

func (r *registry[T]) add(v T, name string) {
	if r.byName == nil {
		r.byName = make(map[string]T)
	}
	name = r.uniqueName(name)
	v.setName(name)
	r.byName[name] = v
	r.order = append(r.order, v)
}

func (r *registry[T]) get(name string) (T, bool) {
	v, ok := r.byName[name]
	return v, ok
}

func (r *registry[T]) remove(v T) bool {
	cur, ok := r.byName[v.Name()]
	if !ok || any(cur) != any(v) {
		return false
	}
	delete(r.byName, v.Name())
	for i, o := range r.order {
		if any(o) == any(v) {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

func (r *registry[T]) len() int { return len(r.order) }

func (r *registry[T]) all() []T {
	out := make([]T, len(r.order))
	copy(out, r.order)
	return out
}

// uniqueName returns name, or name with the lowest free ".NNN" suffix when
// it is taken.
func (r *registry[T]) uniqueName(name string) string {
	name = truncateName(name, MaxNameLen)
	if _, taken := r.byName[name]; !taken {
		return name
	}
	base, n := splitNumericSuffix(name)
	for i := n + 1; ; i++ {
		suffix := fmt.Sprintf(".%03d", i)
		candidate := truncateName(base, MaxNameLen-len(suffix)) + suffix
		if _, taken := r.byName[candidate]; !taken {
			return candidate
		}
	}
}

// splitNumericSuffix splits "name.012" into ("name", 12).
func splitNumericSuffix(name string) (string, int) {
	dot := strings.LastIndexByte(name, '.')
	if dot < 0 || dot == len(name)-1 {
		return name, 0
	}
	n, err := strconv.Atoi(name[dot+1:])
	if err != nil || n < 0 || strings.ContainsAny(name[dot+1:], "+-") {
		return name, 0
	}
	return name[:dot], n
}

func truncateName(name string, limit int) string {
	if len(name) <= limit {
		return name
	}
	name = name[:limit]
	for len(name) > 0 && !utf8.ValidString(name) {
		name = name[:len(name)-1]
	}
	return name
}
