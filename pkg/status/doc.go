/*
Package status tracks per-file outcomes and owns writes to the model tree.

	            +-------------+
	            |   Status    |
	            |  (Storage)  |
	            +------+------+
	                   |
	      +------------+------------+
	      |                         |
	+-----+-----+             +-----+-----+
	|   Files   |             |  Outcomes |
	|  (Atomic) |             |  (Tally)  |
	+-----------+             +-----------+

🎯 Purpose:
- Names the terminal outcome of every candidate file
- Counts outcomes into updated and skipped totals
- Formats one console line per file
- Replaces files atomically so a failed write never leaves a partial file

⚡ WriteFileAtomic writes to a temp file in the target directory, syncs it,
copies the original mode and renames it over the target. The temp file is
removed on every failure path.
*/
package status
