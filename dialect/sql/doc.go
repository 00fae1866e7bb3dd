// Package sql provides the clause-composition engine of the facet
// facade together with its database/sql execution boundary.
//
// # Builder Types
//
// The package provides one builder per clause, each compiled
// independently to (text, positional arguments):
//
//   - Where: WHERE predicate trees built from chained condition calls
//   - Order: ORDER BY column/direction sequences
//   - Group: GROUP BY key lists with date-bucketing expressions
//   - JoinChain: linearized FROM-clause join chains
//   - Selector: SELECT / COUNT statement assembly over the above
//   - InsertBuilder, UpdateBuilder, DeleteBuilder: mutation templating
//
// # Predicates
//
// Conditions chain with AND by default; every operator has an Or
// variant, and Not negates either the next condition or, given a
// callback, a whole sub-tree:
//
//	w := sql.NewWhere().
//	    Equals("FirstName", "Frank").
//	    AndEquals("LastName", "Harris", func(w *sql.Where) {
//	        w.OrEquals("CustomerId", 16)
//	    })
//	clause, args := w.Query()
//	// WHERE FirstName = ? AND (LastName = ? OR CustomerId = ?)
//	// args: ["Frank", "Harris", 16]
//
// A condition call missing its column or value is a documented no-op;
// use Strict to turn such calls into errors instead.
//
// # Joins
//
// A join chain is a strict left-associative path over pairwise joins:
//
//	artist := sql.Table("Artist", "ArtistId", "Name")
//	album := sql.Table("Album", "AlbumId", "Title", "ArtistId")
//	chain, err := sql.Chain(artist).Join(album, sql.Key("ArtistId"), sql.Key("ArtistId"))
//
// # Statement compilation
//
// Compiled text uses ?-style positional placeholders; the argument
// list of every Query method is flat and ordered to match. Grouped
// statements project the $count pseudo-column and the fixed
// $yearDay / $yearWeek / $yearMonth / $year bucket aliases.
//
// # Execution
//
// Driver, Conn and Rows adapt database/sql to the dialect.Driver
// contract. ObserverDriver layers per-statement events, aggregate
// statistics and slow-query detection over any driver.
package sql
