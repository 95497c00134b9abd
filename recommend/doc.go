// Package recommend derives "games like this one" lists from the lexical
// index. The reference game's own description and tags are mined for
// representative terms; candidates must overlap those terms and share the
// reference's exact player count and playing time profile.
package recommend
