// MoView - Movie Review and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moview

/*
Package recommend turns a user's review history into movie recommendations.

The pipeline runs once per request and is strictly sequential:

 1. Profiler partitions the reviews, resolves up to five favourite movies
    through the catalog (one at a time, spaced by a delay) and writes a
    narrative describing the user's taste.
 2. Generator sends the narrative to the generative service, decodes the
    JSON array it returns and resolves each suggested title.
 3. FallbackSelector runs only when the generator produced nothing. It maps
    the narrative onto one of a few curated pools of four titles.

Upstream failures never escape the pipeline: an unreachable catalog or
generative service only makes the result shorter. Service returns errors only
for an unknown user, a user without reviews, or a failing review store.

Every collaborator is injected through Deps so tests can substitute a fake
catalog, a canned generator, a zero delay and a fixed random source.
*/
package recommend
