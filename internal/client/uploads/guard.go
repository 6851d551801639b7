package uploads

import "fmt"

// Confirmer asks the user a yes/no question and reports the answer.
type Confirmer interface {
	Confirm(prompt string) bool
}

// Guard blocks leaving the application while uploads are in flight, since an
// interrupted upload cannot be resumed. The confirmer is the escape hatch.
type Guard struct {
	registry  *Registry
	confirmer Confirmer
}

func NewGuard(registry *Registry, confirmer Confirmer) *Guard {
	return &Guard{registry: registry, confirmer: confirmer}
}

// CanLeave returns true when no upload is in flight, or when the user
// explicitly confirms that in-flight uploads may be abandoned. The registry
// is consulted synchronously.
func (g *Guard) CanLeave() bool {
	n := g.registry.UploadingCount()
	if n == 0 {
		return true
	}
	return g.confirmer.Confirm(fmt.Sprintf(
		"%d video(s) are still uploading.\nIf you leave now, uploads will be interrupted. Continue?", n))
}
