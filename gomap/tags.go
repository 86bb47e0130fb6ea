package gomap

import (
	"reflect"
	"strings"
)

type fieldInfo struct {
	name      string
	index     int
	omitEmpty bool
	skip      bool
}

func fieldInfoOf(f reflect.StructField) fieldInfo {
	fi := fieldInfo{name: f.Name, index: f.Index[0]}
	if !f.IsExported() {
		fi.skip = true
		return fi
	}
	tag, ok := f.Tag.Lookup("slone")
	if !ok {
		return fi
	}
	if tag == "-" {
		fi.skip = true
		return fi
	}
	parts := strings.Split(tag, ",")
	if parts[0] != "" {
		fi.name = parts[0]
	}
	for _, p := range parts[1:] {
		if p == "omitempty" {
			fi.omitEmpty = true
		}
	}
	return fi
}

func structFields(t reflect.Type) []fieldInfo {
	fis := make([]fieldInfo, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		fi := fieldInfoOf(t.Field(i))
		if fi.skip {
			continue
		}
		fis = append(fis, fi)
	}
	return fis
}
