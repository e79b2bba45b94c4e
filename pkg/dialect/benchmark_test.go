package dialect_test

import (
	"testing"

	"github.com/yaklabco/semmerge/pkg/dialect"
)

func BenchmarkDetect_Python(b *testing.B) {
	code := []byte("#!/usr/bin/env python3\ndef hello():\n    print('hi')\n")
	b.ResetTimer()
	for range b.N {
		dialect.Detect("tool", code)
	}
}

func BenchmarkDetect_CMakeFilename(b *testing.B) {
	code := []byte("cmake_minimum_required(VERSION 3.20)\nproject(demo)\n")
	b.ResetTimer()
	for range b.N {
		dialect.Detect("CMakeLists.txt", code)
	}
}

func BenchmarkDetect_Unknown(b *testing.B) {
	code := []byte("hello")
	b.ResetTimer()
	for range b.N {
		dialect.Detect("notes", code)
	}
}
