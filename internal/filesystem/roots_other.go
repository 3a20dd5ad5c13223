//go:build !windows

package filesystem

func platformRoots() []string {
	return []string{"/"}
}
