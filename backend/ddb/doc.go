/*
Package ddb adapts Amazon DynamoDB tables to the backend contract.

Tables follow the partition-plus-sort-key convention: key mappings carry
exactly two fields, partition key first, sort key second, and the
capability report marks composite keys as required. Values cross the
wire through attributevalue marshaling, so mapping values may be any
type that package supports.

This is the one bundled adapter that delivers the range extension. A
range query takes a key condition expression with :name placeholders
and streams matching items lazily:

	ch, err := store.ExecuteRangeQuery(ctx,
	    "PK = :pk AND SK > :after", "events",
	    backend.Mapping{}.Add("pk", "TENANT#acme").Add("after", "2024"),
	    nil)
	if err != nil {
	    return err
	}
	for result := range ch {
	    if result.Err != nil {
	        return result.Err
	    }
	    use(result.Row)
	}

Pagination is internal; pages are fetched on demand as the consumer
drains the channel. Throttling, retry and table provisioning stay with
the caller.

RangeQuery builds the same stream with more control, selecting a
secondary index, page size, sort direction and a hydrator through a
fluent builder.
*/
package ddb
