// Package qrcode renders badge share links as QR code images, either as raw
// PNG bytes or as a data-URI string for embedding.
//
// A badge earner shares their credential by certificate id; Share builds the
// public verification link and renders it in one step, while ShareURL and
// Generate remain available separately:
//
//	png, err := qrcode.Share("https://profile.deepcytes.io", cert, 256)
//
// Errors are package-level sentinels comparable with errors.Is.
package qrcode
