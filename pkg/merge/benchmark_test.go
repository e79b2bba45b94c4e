package merge_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/yaklabco/semmerge/pkg/dialect"
	"github.com/yaklabco/semmerge/pkg/merge"
)

// pythonModule builds a module of n functions, skipping the names in skip.
func pythonModule(n int, skip map[int]bool) string {
	var builder strings.Builder
	builder.WriteString("import os\n\n")
	for i := range n {
		if skip[i] {
			continue
		}
		fmt.Fprintf(&builder, "def f%d(x):\n    return os.path.join(x, %q)\n\n", i, fmt.Sprint(i))
	}
	return builder.String()
}

func BenchmarkMerge_Python(b *testing.B) {
	dia, err := dialect.Default().Lookup(dialect.Python)
	if err != nil {
		b.Fatal(err)
	}

	in := merge.Input{
		Filename: "bench.py",
		Ancestor: pythonModule(200, map[int]bool{50: true, 150: true}),
		Current:  pythonModule(200, map[int]bool{150: true}),
		Other:    pythonModule(200, map[int]bool{50: true}),
	}

	b.ResetTimer()
	for range b.N {
		if _, err := merge.Merge(dia, in); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkMerge_CMake(b *testing.B) {
	dia, err := dialect.Default().Lookup(dialect.CMake)
	if err != nil {
		b.Fatal(err)
	}

	var anc, cur, oth strings.Builder
	for i := range 300 {
		line := fmt.Sprintf("add_subdirectory(dir%d)\n", i)
		anc.WriteString(line)
		cur.WriteString(line)
		oth.WriteString(line)
		if i == 100 {
			cur.WriteString("add_subdirectory(mine)\n")
			oth.WriteString("add_subdirectory(theirs)\n")
		}
	}
	in := merge.Input{Filename: "CMakeLists.txt", Ancestor: anc.String(), Current: cur.String(), Other: oth.String()}

	b.ResetTimer()
	for range b.N {
		if _, err := merge.Merge(dia, in); err != nil {
			b.Fatal(err)
		}
	}
}
