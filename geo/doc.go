// Package geo resolves client IP addresses to ISO country codes from a local
// MaxMind GeoLite2/GeoIP2 database for ledger aggregation.
//
// [Resolver] satisfies the goCaptcha.CountryResolver interface. Lookups never
// fail a verification: any parse or database error yields an empty country.
package geo
