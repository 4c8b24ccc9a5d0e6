package gplist

import (
	"fmt"
	"strconv"
	"strings"
)

// Add inserts value at path, navigating through doc.Root the way
// _get_prop_parent walks prop_fields in the original implementation. path
// elements address a Dict by string key or an Array by int index. Add fails
// if the parent lookup fails, or if the final element already exists.
func Add(doc *Document, value Value, path ...interface{}) (err error) {
	defer recoverError(&err)
	parent, key := navigateToParent(doc.Root, path)
	if has(parent, key) {
		fail(PathExists, "%s already exists", formatPath(path))
	}
	setIn(parent, key, value)
	return nil
}

// Update replaces the value at path. It fails if the final element is
// absent.
func Update(doc *Document, value Value, path ...interface{}) (err error) {
	defer recoverError(&err)
	parent, key := navigateToParent(doc.Root, path)
	if !has(parent, key) {
		failNotFound(path)
	}
	setIn(parent, key, value)
	return nil
}

// Remove deletes the value at path. It fails if the final element is
// absent.
func Remove(doc *Document, path ...interface{}) (err error) {
	defer recoverError(&err)
	parent, key := navigateToParent(doc.Root, path)
	if !has(parent, key) {
		failNotFound(path)
	}
	deleteIn(parent, key)
	return nil
}

// failNotFound reports a missing final path element using the same
// "tail/of/path" of "prefix" composition navigateToParent uses for a
// missing intermediate element, so PathNotFound has one consistent shape
// throughout the mutation API.
func failNotFound(path []interface{}) {
	tail := formatPath(path[len(path)-1:])
	prefix := formatPath(path[:len(path)-1])
	fail(PathNotFound, "%q of %q not found", tail, prefix)
}

// Get reads the value at path, reporting whether it was present.
func Get(doc *Document, path ...interface{}) (Value, bool) {
	if len(path) == 0 {
		return nil, false
	}
	parent, key, ok := tryNavigateToParent(doc.Root, path)
	if !ok {
		return nil, false
	}
	return getIn(parent, key)
}

// navigateToParent walks path[:len(path)-1] starting from root and returns
// the parent container plus the final path element, panicking with
// EmptyPath or PathNotFound exactly as the original's _get_prop_parent does
// (message format: `"tail/of/path" of "prefix"`).
func navigateToParent(root Value, path []interface{}) (Value, interface{}) {
	if len(path) < 1 {
		fail(EmptyPath, "at least one path element needs to be specified")
	}
	cur := root
	for i, elem := range path[:len(path)-1] {
		v, ok := getIn(cur, elem)
		if !ok {
			found := formatPath(path[:i])
			rest := formatPath(path[i:])
			fail(PathNotFound, "%q of %q not found", rest, found)
		}
		cur = v
	}
	return cur, path[len(path)-1]
}

func tryNavigateToParent(root Value, path []interface{}) (Value, interface{}, bool) {
	cur := root
	for _, elem := range path[:len(path)-1] {
		v, ok := getIn(cur, elem)
		if !ok {
			return nil, nil, false
		}
		cur = v
	}
	return cur, path[len(path)-1], true
}

func getIn(container Value, elem interface{}) (Value, bool) {
	switch c := container.(type) {
	case *Dict:
		key, ok := elem.(string)
		if !ok {
			return nil, false
		}
		return c.Get(key)
	case *Array:
		idx, ok := asIndex(elem)
		if !ok || idx < 0 || idx >= len(c.Values) {
			return nil, false
		}
		return c.Values[idx], true
	default:
		return nil, false
	}
}

func has(container Value, elem interface{}) bool {
	_, ok := getIn(container, elem)
	return ok
}

func setIn(container Value, elem interface{}, value Value) {
	if container == nil {
		fail(PathNotFound, "cannot address into an empty document")
	}
	switch c := container.(type) {
	case *Dict:
		key, ok := elem.(string)
		if !ok {
			fail(PathNotFound, "%v is not a string key", elem)
		}
		c.Set(key, value)
	case *Array:
		idx, ok := asIndex(elem)
		if !ok {
			fail(PathNotFound, "%v is not an array index", elem)
		}
		if idx == len(c.Values) {
			c.Values = append(c.Values, value)
			return
		}
		if idx < 0 || idx > len(c.Values) {
			fail(PathNotFound, "index %d out of range (len %d)", idx, len(c.Values))
		}
		c.Values[idx] = value
	default:
		fail(PathNotFound, "cannot address into a %s", container.Kind())
	}
}

func deleteIn(container Value, elem interface{}) {
	if container == nil {
		fail(PathNotFound, "cannot address into an empty document")
	}
	switch c := container.(type) {
	case *Dict:
		key, ok := elem.(string)
		if !ok {
			fail(PathNotFound, "%v is not a string key", elem)
		}
		c.Delete(key)
	case *Array:
		idx, ok := asIndex(elem)
		if !ok || idx < 0 || idx >= len(c.Values) {
			fail(PathNotFound, "index %v out of range", elem)
		}
		c.Values = append(c.Values[:idx], c.Values[idx+1:]...)
	default:
		fail(PathNotFound, "cannot address into a %s", container.Kind())
	}
}

func asIndex(elem interface{}) (int, bool) {
	switch v := elem.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	default:
		return 0, false
	}
}

// formatPath renders a path the way the original joins prop_fields with "/"
// for its error messages.
func formatPath(path []interface{}) string {
	parts := make([]string, len(path))
	for i, elem := range path {
		switch v := elem.(type) {
		case string:
			parts[i] = v
		case int:
			parts[i] = strconv.Itoa(v)
		default:
			parts[i] = fmt.Sprint(v)
		}
	}
	return strings.Join(parts, "/")
}
