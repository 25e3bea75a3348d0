package bioguide

const currentYAML = `
- id:
    bioguide: W000817
  name:
    first: Elizabeth
    last: Warren
    official_full: Elizabeth Warren
  terms:
  - type: sen
    start: '2013-01-03'
    end: '2019-01-03'
    state: MA
  - type: sen
    start: '2019-01-03'
    state: MA
- id:
    bioguide: P000197
  name:
    first: Nancy
    last: Pelosi
  terms:
  - type: rep
    start: '1987-06-02'
    end: '1989-01-03'
    state: CA
`

const historicalYAML = `
- id:
    bioguide: A000360
  name:
    first: Lamar
    last: Alexander
    official_full: Lamar Alexander
  terms:
  - type: sen
    start: '2003-01-07'
    end: '2021-01-03'
    state: TN
- id:
    bioguide: M000303
  name:
    first: John
    middle: Sidney
    last: McCain
    suffix: III
    nickname: Johnny
  terms:
  - type: rep
    start: '1983-01-03'
    end: '1987-01-03'
    state: AZ
  - type: sen
    start: '1987-01-06'
    end: '2018-08-25'
    state: AZ
- id:
    bioguide: S000001
  name:
    first: John
    last: Smith
  terms:
  - type: sen
    start: '2001-01-03'
    end: '2007-01-03'
    state: OH
- id:
    bioguide: S000002
  name:
    first: John
    last: Smith
  terms:
  - type: sen
    start: '2005-01-03'
    end: '2011-01-03'
    state: VA
`
