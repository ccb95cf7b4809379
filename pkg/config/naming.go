package config

import (
	"path/filepath"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// DeriveTargetName derives the extraction directory name for a set of
// archives. One archive gives its file name without extension. Several
// archives are diffed character by character in turn: unchanged and removed
// runs are kept and inserted runs are appended behind an underscore, so
// foo_v1.zip and foo_v2.zip give foo_v1_2.
func DeriveTargetName(archives []string) string {
	if len(archives) == 0 {
		return ""
	}

	target := stem(archives[0])
	for _, archive := range archives[1:] {
		target = diffName(target, stem(archive))
	}
	return target
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func diffName(current, next string) string {
	a := strings.Split(current, "")
	b := strings.Split(next, "")

	var sb strings.Builder
	for _, op := range difflib.NewMatcher(a, b).GetOpCodes() {
		kept := strings.Join(a[op.I1:op.I2], "")
		added := strings.Join(b[op.J1:op.J2], "")

		switch op.Tag {
		case 'e', 'd':
			sb.WriteString(kept)
		case 'i':
			sb.WriteString("_" + added)
		case 'r':
			sb.WriteString(kept)
			sb.WriteString("_" + added)
		}
	}
	return sb.String()
}
