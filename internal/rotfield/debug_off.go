//go:build !debug
// +build !debug

package rotfield

func DebugLog(format string, args ...interface{}) {
	if Debug {
		Logf("[DEBUG] "+format, args...)
	}
}

func DebugLogOnce(format string, args ...interface{}) {}
