package shelfscan

import (
	"image"
	"sync"
)

// Scan processes one image end to end: the transform cascade produces raw
// detections and reconciliation reduces them to the authoritative per-image
// barcode set. An image with no recognizable barcode yields an empty slice
// and a nil error.
func Scan(img image.Image, dec Decoder, opts Options) ([]Barcode, error) {
	syms, err := Detect(img, dec, opts)
	if err != nil {
		return nil, err
	}
	return Reconcile(syms), nil
}

// ScanAll fans independent images out across worker goroutines. Images
// share no mutable state, so the only shared resource is the decoder, which
// must be safe for concurrent use. Results are returned in input order; the
// first error encountered is returned alongside whatever completed.
func ScanAll(imgs []image.Image, dec Decoder, opts Options, workers int) ([][]Barcode, error) {
	if workers < 1 {
		workers = 1
	}
	if workers > len(imgs) {
		workers = len(imgs)
	}

	results := make([][]Barcode, len(imgs))
	errs := make([]error, len(imgs))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i], errs[i] = Scan(imgs[i], dec, opts)
			}
		}()
	}
	for i := range imgs {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return results, err
		}
	}
	return results, nil
}
