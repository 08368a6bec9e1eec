//go:build !(linux || darwin || freebsd || openbsd || netbsd)

package sysinfo

func kernelVersion() (string, error) {
	return "", nil
}
