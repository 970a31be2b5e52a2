// Package location serves the country, state and city reference data.
//
// Store is the read side of the document store; MongoStore implements it
// over the countries, states and cities collections, converting whitelisted
// filter.Spec values into equality queries and refusing any other key. Service turns lookups into
// envelopes: collection queries answer 404 when nothing matches, and
// hierarchical lookups resolve the parent country (and state) before
// touching child collections. Store failures are logged once, reported to
// an Alerter and answered with a generic 500 envelope, or 504 when the
// store ran out of time.
//
// NewRouter exposes the Service as a chi router:
//
//	GET /countries
//	GET /countries/{ciso}
//	GET /countries/{ciso}/states
//	GET /countries/{ciso}/states/{siso}
//	GET /countries/{ciso}/states/{siso}/cities
//	GET /countries/{ciso}/cities
//	GET /states
//	GET /states/{ciso}
//	GET /cities
//	GET /cities/{ciso}
//
// Importer loads the dataset files into MongoDB and creates the indexes the
// lookups rely on.
package location
