/*
Package operation drives a keystamp run over the model tree.

	+-------------+
	| Candidates  |
	|   (Walk)    |
	+------+------+
	       |
	+------+------+
	|  Annotate   |
	| (Per file)  |
	+------+------+
	       |
	+------+------+
	|   Status    |
	|  (Storage)  |
	+-------------+

🎯 Purpose:
- Lists candidate files under the configured root
- Moves each file to exactly one terminal outcome
- Writes patched files atomically, or prints a diff in dry run

🔄 Flow per file:
1. Read the file; a read error stops the run
2. Already declares the field: skipped, nothing written
3. Missing provider or contentType: skipped as not a model
4. No identity override and no category mapping: skipped, pair reported
5. Patch and write; a write error stops the run

Files are handled one at a time in lexical order. Files processed before a
fatal error keep their changes; the patch is idempotent so a re-run finishes
the rest.

🔍 Example:

	op, err := operation.NewAnnotateOperation(operation.Options{
		Config: config.Default(),
		Policy: policy.Default(),
		Logger: log.New(os.Stdout, logger),
	})
	if err != nil {
		return err
	}

	tally, err := op.Execute(ctx)
*/
package operation
