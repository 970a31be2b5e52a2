// Package dataset reads the location reference files (countries.json,
// states.json, cities.json) used to seed the document store.
//
// Files come from a Source: DirSource reads a local directory and S3Source
// reads objects under a bucket prefix. Each file holds a single JSON array
// and Decode streams it one element at a time, so the large cities file is
// never held in memory at once.
//
//	src, err := dataset.NewSource(ctx, cfg)
//	rc, err := src.Open(ctx, dataset.CountriesFile)
//	defer rc.Close()
//	n, err := dataset.Decode(rc, func(c location.Country) error {
//	    return batch.Add(c)
//	})
package dataset
