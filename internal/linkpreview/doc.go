// Package linkpreview captures open-graph previews for link cards:
// page title, description, og:image and favicon, with the two assets
// downloaded into the store's images directory so link cards render
// offline.
package linkpreview
