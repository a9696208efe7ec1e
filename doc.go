/*Package bookstat computes frequency statistics over directories of book
records.

A directory holds any number of *.json files, each containing one JSON array
of book objects. A Driver parses the files on a bounded pool of workers,
extracts one attribute (title, author, year_published or genre) from every
book, and counts the values case-insensitively. The counts are ranked by
frequency and written to a statistics_by_<attribute> file in XML, JSON or
YAML.

Files and records that cannot be parsed are counted and logged rather than
failing the run. A file only contributes to the statistics once it has been
parsed in full.

Directories and output locations may be local paths or s3:// URIs.
*/
package bookstat
