package cmd

const rootLongDescription = `earlyexit rewrites Express-style route handlers so that every statement
sending a response is followed by a bare "return;".

  res.json(data);                      res.json(data);
                                 ->    return;

  return res.status(404).json(e);  ->  res.status(404).json(e);
                                       return;

Files are rewritten in place and only when something changed. Running it
twice is a no-op.

Supports Go-style path patterns:
  - ./...          recursively scan current directory
  - ./src/...      recursively scan src directory
  - ./routes a.ts  scan one directory level and a single file

Handler signatures can be normalized with --annotation add|remove, which adds
or strips ": Promise<void>" on async (req: Request, res: Response) handlers.

Statements can be skipped with "// earlyexit:ignore" on the line before them,
or limited to one patch family with "// earlyexit:ignore exit" or
"// earlyexit:ignore signature". The directive in the comment block at the
top of a file applies to the whole file.

Settings are read from .earlyexit.yaml when present; flags override it.`

const checkLongDescription = `Check reports the files that need early exits or signature changes
without writing anything. On a terminal the report is shown as an
interactive list when it does not fit the screen.`

const diffLongDescription = `Diff prints the pending rewrites as unified diffs without writing
anything.`
