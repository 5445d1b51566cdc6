package mapper

import (
	"fmt"
	"strings"
)

func (m Model) log(sql string, args []interface{}) {
	if m.logger == nil {
		return
	}
	if len(args) == 0 {
		m.logger.Debug(sql)
		return
	}
	params := make([]string, len(args))
	for i, arg := range args {
		params[i] = fmt.Sprintf("$%d = %#v", i+1, arg)
	}
	m.logger.Debug(sql + "  [" + strings.Join(params, ", ") + "]")
}

func (m Model) logf(format string, args ...interface{}) {
	if m.logger == nil {
		return
	}
	m.logger.Debug(fmt.Sprintf(format, args...))
}
