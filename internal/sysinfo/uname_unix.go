//go:build linux || darwin || freebsd || openbsd || netbsd

package sysinfo

import "golang.org/x/sys/unix"

// kernelVersion returns the kernel build string, as printed by uname -v.
func kernelVersion() (string, error) {
	var u unix.Utsname
	if err := unix.Uname(&u); err != nil {
		return "", err
	}
	return unix.ByteSliceToString(u.Version[:]), nil
}
