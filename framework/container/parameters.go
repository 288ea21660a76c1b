package container

import "strings"

// Parameters is the nested parameter store. Leaves are arbitrary values;
// branches are Parameters or map[string]any.
type Parameters map[string]any

// Get walks path one dot-separated segment at a time and returns whatever is
// found at the end, branch or leaf. A missing or nil segment fails the whole
// path.
//
//	params := container.Parameters{"a": map[string]any{"b": map[string]any{"c": 42}}}
//	v, _ := params.Get("a.b.c") // 42
func (p Parameters) Get(path string) (any, error) {
	var context any = map[string]any(p)

	for _, token := range strings.Split(path, ".") {
		branch, ok := asBranch(context)
		if !ok {
			return nil, &ParameterNotFoundError{Path: path}
		}
		next, ok := branch[token]
		if !ok || next == nil {
			return nil, &ParameterNotFoundError{Path: path}
		}
		context = next
	}

	return context, nil
}

// Has reports whether Get would succeed.
func (p Parameters) Has(path string) bool {
	_, err := p.Get(path)
	return err == nil
}

// Set stores value at path, creating intermediate branches and replacing any
// leaf that sits where a branch is needed.
func (p Parameters) Set(path string, value any) {
	tokens := strings.Split(path, ".")
	branch := map[string]any(p)

	for _, token := range tokens[:len(tokens)-1] {
		next, ok := asBranch(branch[token])
		if !ok {
			next = make(map[string]any)
			branch[token] = next
		}
		branch = next
	}

	branch[tokens[len(tokens)-1]] = value
}

// Merge deep-merges src into p. Branches are merged key by key; leaves in src
// win.
func (p Parameters) Merge(src map[string]any) {
	merge(map[string]any(p), src)
}

func merge(dst, src map[string]any) {
	for k, v := range src {
		if sb, ok := asBranch(v); ok {
			if db, ok := asBranch(dst[k]); ok {
				merge(db, sb)
				continue
			}
			cp := make(map[string]any, len(sb))
			merge(cp, sb)
			dst[k] = cp
			continue
		}
		dst[k] = v
	}
}

func asBranch(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, m != nil
	case Parameters:
		return map[string]any(m), m != nil
	}
	return nil, false
}
