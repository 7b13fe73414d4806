// Package config provides configuration parsing for shadowctl.
//
// The configuration is stored in shadowctl.json, looked up in the
// working directory and then in each parent directory. Command-line
// flags override file values.
//
// # Configuration File Structure
//
//	{
//	  "schema": "schemas/bank.yaml",
//	  "format": "yaml",
//	  "color": "auto",
//	  "logLevel": "info",
//	  "maxFlushPasses": 100,
//	  "diffContext": 3
//	}
//
// # Usage
//
//	cfg, err := config.LoadFromDir(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Schema:", cfg.SchemaPath())
package config
