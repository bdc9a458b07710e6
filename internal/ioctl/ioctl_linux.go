package ioctl

import (
	"fmt"
	"reflect"
	"syscall"
)

// Do executes the ioctl call with a pointer argument, ptr may be nil.
func Do(fd uintptr, command Command, ptr interface{}) error {
	var p uintptr

	if ptr != nil {
		p = reflect.ValueOf(ptr).Pointer()
	}

	_, _, errno := syscall.Syscall(syscall.SYS_IOCTL, fd, uintptr(command), p)
	if errno != 0 {
		return fmt.Errorf("%s failed: %w", command, errno)
	}
	return nil
}
