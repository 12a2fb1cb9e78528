// Package torrentsearch searches 1337x by scraping its listing and detail
// pages.
//
//	results, err := torrentsearch.Search(ctx, "Debian ISO")
//	if err != nil {
//		return err
//	}
//	for _, result := range results {
//		magnet, err := result.Magnet.Get()
//		...
//	}
//
// Validation, listing and transport failures fail the whole call. Magnet,
// seeders and leeches are extracted per record and fail independently, so a
// record with no magnet is still returned.
package torrentsearch
