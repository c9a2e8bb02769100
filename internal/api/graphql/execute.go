package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"

	"github.com/feral-file/ff-raffle/internal/adapter"
)

const typenameField = "__typename"

// execution runs one validated operation. Root fields resolve serially.
type execution struct {
	schema *ast.Schema
	doc    *ast.QueryDocument
	vars   map[string]interface{}
	json   adapter.JSON
	errors gqlerror.List
}

// run returns the data of the operation, or nil when a non-null root field failed
func (x *execution) run(ctx context.Context, r *resolver, op *ast.OperationDefinition) interface{} {
	root := x.schema.Query
	if op.Operation == ast.Mutation {
		root = x.schema.Mutation
	}

	data := &object{}
	for _, field := range x.collectFields(op.SelectionSet, root.Name) {
		if field.Name == typenameField {
			data.set(field.Alias, root.Name)
			continue
		}

		path := ast.Path{ast.PathName(field.Alias)}
		value, err := x.resolveField(ctx, r, op.Operation, field)
		if err != nil {
			gqlErr := ErrorPresenter(ctx, err)
			gqlErr.Path = path
			gqlErr.Locations = locations(field)
			x.errors = append(x.errors, gqlErr)
			if field.Definition.Type.NonNull {
				return nil
			}
			data.set(field.Alias, nil)
			continue
		}

		completed, ok := x.complete(field.Definition.Type, value, field.SelectionSet, path)
		if !ok {
			return nil
		}
		data.set(field.Alias, completed)
	}

	return data
}

// resolveField calls the resolver and flattens its DTO into JSON values
func (x *execution) resolveField(ctx context.Context, r *resolver, operation ast.Operation, field *ast.Field) (value interface{}, err error) {
	defer func() {
		if p := recover(); p != nil {
			value, err = nil, recoverResolver(ctx, p)
		}
	}()

	result, err := r.resolve(ctx, operation, field.Name, field.ArgumentMap(x.vars))
	if err != nil {
		return nil, err
	}

	raw, err := x.json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", field.Name, err)
	}
	if err := x.json.Unmarshal(raw, &value); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", field.Name, err)
	}
	return value, nil
}

// complete shapes value to the selection. ok is false when a non-null value was null,
// in which case the parent becomes null.
func (x *execution) complete(typ *ast.Type, value interface{}, sel ast.SelectionSet, path ast.Path) (interface{}, bool) {
	if value == nil {
		if !typ.NonNull {
			return nil, true
		}
		// nil slices encode as null
		if typ.Elem != nil {
			return []interface{}{}, true
		}
		x.errors = append(x.errors, &gqlerror.Error{
			Message: fmt.Sprintf("non-null field %s resolved to null", path.String()),
			Path:    path,
		})
		return nil, false
	}

	completed, ok := x.completeValue(typ, value, sel, path)
	if !ok {
		return nil, !typ.NonNull
	}
	return completed, true
}

func (x *execution) completeValue(typ *ast.Type, value interface{}, sel ast.SelectionSet, path ast.Path) (interface{}, bool) {
	if typ.Elem != nil {
		items, isList := value.([]interface{})
		if !isList {
			x.errors = append(x.errors, &gqlerror.Error{Message: "expected a list", Path: path})
			return nil, false
		}
		out := make([]interface{}, len(items))
		for i, item := range items {
			v, ok := x.complete(typ.Elem, item, sel, appendPath(path, ast.PathIndex(i)))
			if !ok {
				return nil, false
			}
			out[i] = v
		}
		return out, true
	}

	if len(sel) == 0 {
		return value, true
	}

	fields, isObject := value.(map[string]interface{})
	if !isObject {
		x.errors = append(x.errors, &gqlerror.Error{Message: "expected an object", Path: path})
		return nil, false
	}

	obj := &object{}
	typeName := typ.Name()
	for _, field := range x.collectFields(sel, typeName) {
		if field.Name == typenameField {
			obj.set(field.Alias, typeName)
			continue
		}
		v, ok := x.complete(field.Definition.Type, fields[field.Name], field.SelectionSet, appendPath(path, ast.PathName(field.Alias)))
		if !ok {
			return nil, false
		}
		obj.set(field.Alias, v)
	}
	return obj, true
}

// collectFields flattens fragments and merges fields that share a response key
func (x *execution) collectFields(sel ast.SelectionSet, typeName string) []*ast.Field {
	var fields []*ast.Field
	x.collect(sel, typeName, &fields, map[string]int{}, map[string]bool{})
	return fields
}

func (x *execution) collect(sel ast.SelectionSet, typeName string, fields *[]*ast.Field, index map[string]int, visited map[string]bool) {
	for _, s := range sel {
		switch s := s.(type) {
		case *ast.Field:
			if !x.included(s.Directives) {
				continue
			}
			if i, seen := index[s.Alias]; seen {
				merged := *(*fields)[i]
				merged.SelectionSet = append(append(ast.SelectionSet{}, merged.SelectionSet...), s.SelectionSet...)
				(*fields)[i] = &merged
				continue
			}
			index[s.Alias] = len(*fields)
			*fields = append(*fields, s)
		case *ast.InlineFragment:
			if !x.included(s.Directives) || (s.TypeCondition != "" && s.TypeCondition != typeName) {
				continue
			}
			x.collect(s.SelectionSet, typeName, fields, index, visited)
		case *ast.FragmentSpread:
			if !x.included(s.Directives) || visited[s.Name] {
				continue
			}
			visited[s.Name] = true
			fragment := x.doc.Fragments.ForName(s.Name)
			if fragment == nil || fragment.TypeCondition != typeName {
				continue
			}
			x.collect(fragment.SelectionSet, typeName, fields, index, visited)
		}
	}
}

// included applies @skip and @include
func (x *execution) included(directives ast.DirectiveList) bool {
	if d := directives.ForName("skip"); d != nil {
		if skip, _ := d.ArgumentMap(x.vars)["if"].(bool); skip {
			return false
		}
	}
	if d := directives.ForName("include"); d != nil {
		if include, _ := d.ArgumentMap(x.vars)["if"].(bool); !include {
			return false
		}
	}
	return true
}

func appendPath(path ast.Path, elem ast.PathElement) ast.Path {
	out := make(ast.Path, len(path), len(path)+1)
	copy(out, path)
	return append(out, elem)
}

func locations(field *ast.Field) []gqlerror.Location {
	if field.Position == nil {
		return nil
	}
	return []gqlerror.Location{{Line: field.Position.Line, Column: field.Position.Column}}
}

// object is a response map that keeps the selection order
type object struct {
	keys   []string
	values map[string]interface{}
}

func (o *object) set(key string, value interface{}) {
	if o.values == nil {
		o.values = make(map[string]interface{})
	}
	if _, exists := o.values[key]; !exists {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
}

func (o *object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(o.values[key])
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
