package config

import "fmt"

// VmType is the virtual-machine family of a chain. It is a closed set;
// callers switching on it must handle every arm explicitly instead of
// falling through on unknown values.
type VmType string

const (
	VmTypeEvm VmType = "evm"
	VmTypeSvm VmType = "svm"
)

func ParseVmType(s string) (VmType, error) {
	switch VmType(s) {
	case VmTypeEvm:
		return VmTypeEvm, nil
	case VmTypeSvm:
		return VmTypeSvm, nil
	default:
		return "", fmt.Errorf("unsupported vm type '%s'", s)
	}
}
