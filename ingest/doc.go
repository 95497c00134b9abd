// Package ingest loads catalog CSV dumps into the game store and lexical
// index, and backfills description embeddings in a separate concurrent pass.
package ingest
