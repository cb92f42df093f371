// Package fiscaldata is the fetch collaborator for the panel pipeline: a
// client for the U.S. Treasury FiscalData auctions query API. It pages
// through the auction records for a date range and hands the raw string
// rows to the panel normalizer untouched. Retries with backoff on 5xx and
// 429, rate limited to stay polite to the public endpoint.
package fiscaldata
