/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

const (
	UserAgent = "boylstonchessclub-roundrobin/0.3.0 (+https://github.com/mikeb26/boylstonchessclub-roundrobin)"

	// CacheBucketEnv names the S3 bucket backing the shared web cache. When
	// unset, fetched pages are cached in memory for the life of the process.
	CacheBucketEnv = "RRTD_CACHE_BUCKET"
)
