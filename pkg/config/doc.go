/*
Package config holds the fixed run settings and decodes key policy documents.

	            +-------------+
	            |   Config    |
	            | (Settings)  |
	            +------+------+
	                   |
	      +------------+------------+
	      |            |            |
	+-----+----+ +-----+----+ +-----+----+
	|   HCL    | |   YAML   | |   JSON   |
	|  policy  | |  policy  | |  policy  |
	+----------+ +----------+ +----------+

🎯 Purpose:
- Provides the built-in scan root, file filters and field names
- Validates settings before a run
- Decodes policy documents into PolicyDocument

📝 There are no flags or environment variables. Default returns the only
configuration the CLI ever uses; tests build their own to point at a temp
directory.

🔍 Example:

	cfg := config.Default()
	if err := cfg.Validate(); err != nil {
		return err
	}

	doc, err := config.ParsePolicy(ctx, "policy.hcl", data)
	if err != nil {
		return err
	}
*/
package config
