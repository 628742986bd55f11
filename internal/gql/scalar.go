package gql

import (
	"time"

	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/language/ast"

	"github.com/mcoot/staffdir/internal/model"
)

// Date serializes timestamps as ISO-8601 strings. Inputs may be ISO-8601
// strings or, from variables, epoch milliseconds.
var Date = graphql.NewScalar(graphql.ScalarConfig{
	Name:        "Date",
	Description: "Date custom scalar type",
	Serialize: func(value interface{}) interface{} {
		switch v := value.(type) {
		case time.Time:
			return model.FormatDate(v)
		case *time.Time:
			if v == nil {
				return nil
			}
			return model.FormatDate(*v)
		}
		return nil
	},
	ParseValue: func(value interface{}) interface{} {
		switch v := value.(type) {
		case string:
			t, err := model.ParseDate(v)
			if err != nil {
				return nil
			}
			return t
		case float64:
			return time.UnixMilli(int64(v)).UTC()
		case int:
			return time.UnixMilli(int64(v)).UTC()
		case int64:
			return time.UnixMilli(v).UTC()
		}
		return nil
	},
	ParseLiteral: func(valueAST ast.Value) interface{} {
		s, ok := valueAST.(*ast.StringValue)
		if !ok {
			return nil
		}
		t, err := model.ParseDate(s.Value)
		if err != nil {
			return nil
		}
		return t
	},
})
