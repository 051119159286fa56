package templates

import (
	"strconv"
	"strings"
)

func prefixedStrings(prefix string, count int) string {
	var sb strings.Builder
	for i := 0; i < count; i++ {
		sb.WriteString(prefix)
		sb.WriteString(strconv.Itoa(i))
		if i < count-1 {
			sb.WriteString(", ")
		}
	}
	return sb.String()
}

// depParams renders "a0 Dep[T0], a1 Dep[T1], ..."
func depParams(count int) string {
	var sb strings.Builder
	for i := 0; i < count; i++ {
		n := strconv.Itoa(i)
		sb.WriteString("a")
		sb.WriteString(n)
		sb.WriteString(" Dep[T")
		sb.WriteString(n)
		sb.WriteString("]")
		if i < count-1 {
			sb.WriteString(", ")
		}
	}
	return sb.String()
}

// valueCalls renders "a0.Value(), a1.Value(), ..."
func valueCalls(count int) string {
	var sb strings.Builder
	for i := 0; i < count; i++ {
		sb.WriteString("a")
		sb.WriteString(strconv.Itoa(i))
		sb.WriteString(".Value()")
		if i < count-1 {
			sb.WriteString(", ")
		}
	}
	return sb.String()
}
