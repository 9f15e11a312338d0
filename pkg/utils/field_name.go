package utils

import (
	"reflect"
	"strings"
)

// jsonFieldName reports fields by their JSON name in validation errors.
func jsonFieldName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return field.Name
	}
	return name
}
