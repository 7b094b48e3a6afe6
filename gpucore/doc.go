// Package gpucore defines the opaque resource-ID and descriptor-set
// vocabulary shared by the renderer's ingress tuple: buffer
// and texture handles, descriptor-set layouts, and bind-group snapshots.
// It is a pure data-description package — no GPU, no execution, no
// ownership — the descriptor/image layer that hands draws to the renderer
// is responsible for what the IDs actually name.
package gpucore
