// Package azdo provides a read-only client for the Azure DevOps REST API.
//
// The client covers the core, git, work item tracking, build, pipelines,
// wiki, search, test plan, team settings, and advanced security areas.
// Responses are passed through as raw JSON so callers see exactly what the
// service returned; a small number of composite operations (pull request
// summaries and bulk file downloads) reshape responses into typed results.
//
// # Architecture
//
//   - Client: request plumbing with URL building, retries, and pagination
//   - Areas: one file per REST area mirroring the service's own grouping
//   - Errors: structured APIError with classification methods
//   - Options: builder pattern for client configuration
//
// # Usage
//
// Create a client with an organization name (or full URL) and a token
// source, then call operations with a context:
//
//	logger := zerolog.New(os.Stderr)
//	client, err := azdo.NewClient("myorg", tokens, logger,
//		azdo.WithTimeout(60*time.Second),
//		azdo.WithPageLimit(20),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	repos, err := client.ListRepositories(ctx, "MyProject", azdo.ListRepositoriesOptions{})
//	if err != nil {
//		log.Fatal(err)
//	}
//
// # Requests
//
// Every request carries the configured api-version and a bearer token from
// the TokenSource. Transient failures (HTTP 429, 500, 502, 503, 504 and
// transport errors) are retried with doubling backoff. Paginated listings
// follow continuation tokens up to the configured page limit.
//
// # Error Handling
//
// Responses with status >= 400 surface as *APIError:
//
//	if apiErr, ok := err.(*azdo.APIError); ok {
//		if apiErr.IsNotFound() {
//			// Handle missing resource
//		}
//	}
package azdo
